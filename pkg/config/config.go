// Package config loads archmaint configuration with layered precedence:
// built-in defaults, then /etc/archmaint, then the user's XDG config
// directory, then ARCHMAINT_* environment variables.
package config

// Config is the fully resolved configuration for a maintenance run.
type Config struct {
	Update   Update   `koanf:"update"`
	AUR      AUR      `koanf:"aur"`
	Clean    Clean    `koanf:"clean"`
	Snapshot Snapshot `koanf:"snapshot"`
	Health   Health   `koanf:"health"`
	Pacfiles Pacfiles `koanf:"pacfiles"`
	News     News     `koanf:"news"`
}

// Update selects which package domains the update step covers.
type Update struct {
	Repo          bool `koanf:"repo"`
	AUR           bool `koanf:"aur"`
	Flatpak       bool `koanf:"flatpak"`
	DownloadFirst bool `koanf:"download_first"`
}

// AUR configures the AUR helper.
type AUR struct {
	// Helper is the helper binary name. Empty means auto-detect.
	Helper string `koanf:"helper"`
}

// Clean configures orphan and cache cleanup.
type Clean struct {
	CacheKeep        int  `koanf:"cache_keep"`
	CleanUninstalled bool `koanf:"clean_uninstalled"`
	RemoveOrphans    bool `koanf:"remove_orphans"`
	FlatpakUnused    bool `koanf:"flatpak_unused"`
}

// Snapshot configures snapper integration.
type Snapshot struct {
	Enabled        bool     `koanf:"enabled"`
	MinFreePercent int      `koanf:"min_free_percent"`
	Configs        []string `koanf:"configs"`
}

// Health configures SMART disk checks.
type Health struct {
	Enabled bool     `koanf:"enabled"`
	Devices []string `koanf:"devices"`
}

// Pacfiles configures pacnew/pacsave resolution.
type Pacfiles struct {
	Roots     []string `koanf:"roots"`
	MergeTool string   `koanf:"merge_tool"`
}

// News configures the distribution news feed check.
type News struct {
	Enabled        bool   `koanf:"enabled"`
	URL            string `koanf:"url"`
	Limit          int    `koanf:"limit"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}
