package maintain

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/archmaint/archmaint/pkg/aur"
	"github.com/archmaint/archmaint/pkg/diskhealth"
	"github.com/archmaint/archmaint/pkg/errors"
	"github.com/archmaint/archmaint/pkg/exclude"
	"github.com/archmaint/archmaint/pkg/flatpak"
	"github.com/archmaint/archmaint/pkg/logging"
	"github.com/archmaint/archmaint/pkg/news"
	"github.com/archmaint/archmaint/pkg/pacfiles"
	"github.com/archmaint/archmaint/pkg/pacman"
	"github.com/archmaint/archmaint/pkg/report"
	"github.com/archmaint/archmaint/pkg/snapshot"
)

// Routine is the full maintenance run in order. Each step checks its own
// configuration switches, so the list itself is static.
func Routine() []Step {
	return []Step{
		NewsStep(),
		PreSnapshotStep(),
		RepoUpdateStep(),
		AURUpdateStep(),
		FlatpakUpdateStep(),
		OrphanStep(),
		CacheStep(),
		FlatpakUnusedStep(),
		PostSnapshotStep(),
		PacfilesStep(),
		DiskHealthStep(),
	}
}

// NewsStep shows unread distribution news before anything touches the
// system and lets the user stop the run to deal with it.
func NewsStep() Step {
	return Step{Name: "news", Run: runNews}
}

func runNews(ctx context.Context, s *Session) report.Result {
	const name = "news"
	if !s.Config.News.Enabled {
		return report.SkipResult(name, "disabled in configuration")
	}

	started := time.Now()
	items, err := news.NewClient(s.Config.News).Fetch(ctx)
	if err != nil {
		// An unreachable feed should not block maintenance.
		return report.Result{
			Name: name, Status: report.StatusWarn,
			Detail:   fmt.Sprintf("feed unavailable: %v", err),
			Duration: time.Since(started),
		}
	}

	unread := news.Unread(items, news.LastSeen())
	if len(unread) == 0 {
		return report.OKResult(name, "no unread news", started)
	}

	if err := news.Render(s.Out, unread); err != nil {
		fmt.Fprint(s.Out, news.Markdown(unread))
	}

	if !s.Prompter.Confirm("News above may require manual intervention. Continue the run?", true) {
		// Items stay unread so the next run shows them again.
		s.Abort()
		result := report.OKResult(name, "run stopped for news review", started)
		result.Status = report.StatusWarn
		return result
	}

	if !s.DryRun {
		if err := news.MarkSeen(items); err != nil {
			log := logging.GetLogger("maintain")
			log.Warn().Err(err).Msg("Could not record news state")
		}
	}

	result := report.OKResult(name, fmt.Sprintf("%d unread item(s) shown", len(unread)), started)
	for _, item := range unread {
		result.Items = append(result.Items, item.Title)
	}
	return result
}

// PreSnapshotStep takes a snapper pre snapshot per configuration, guarded
// by the free-space check.
func PreSnapshotStep() Step {
	return Step{Name: "pre snapshots", Run: runPreSnapshots}
}

func runPreSnapshots(ctx context.Context, s *Session) report.Result {
	const name = "pre snapshots"
	cfg := s.Config.Snapshot
	if !cfg.Enabled {
		return report.SkipResult(name, "disabled in configuration")
	}

	started := time.Now()
	if !snapshot.Available(s.Runner) {
		if s.Prompter.Confirm("snapper is not installed. Continue without snapshots?", false) {
			return report.SkipResult(name, "snapper not installed")
		}
		s.Abort()
		return report.FailResult(name,
			errors.New(errors.ErrToolMissing, "snapper not installed"), started)
	}

	configs, err := snapshot.Configs(ctx, s.Runner)
	if err != nil {
		return report.FailResult(name, err, started)
	}
	configs = selectConfigs(configs, cfg.Configs)
	if len(configs) == 0 {
		return report.SkipResult(name, "no snapper configurations found")
	}

	for _, c := range configs {
		ok, free, err := snapshot.FreeSpaceOK(c.Subvolume, cfg.MinFreePercent)
		if err != nil {
			return report.FailResult(name, err, started)
		}
		if !ok {
			question := fmt.Sprintf("Only %d%% free on %s (%d%% required for snapshots). Continue without snapshots?",
				free, c.Subvolume, cfg.MinFreePercent)
			if s.Prompter.Confirm(question, false) {
				return report.SkipResult(name,
					fmt.Sprintf("low free space on %s (%d%%)", c.Subvolume, free))
			}
			s.Abort()
			return report.FailResult(name, errors.Newf(errors.ErrSnapshotSpace,
				"only %d%% free on %s", free, c.Subvolume), started)
		}
	}

	if s.DryRun {
		return report.SkipResult(name,
			dryRunDetail("would create pre snapshots for "+configNames(configs)))
	}

	var items []string
	for _, c := range configs {
		number, err := snapshot.Create(ctx, s.Runner, c.Name, snapshot.Pre, "archmaint pre", 0)
		if err != nil {
			return report.FailResult(name, err, started)
		}
		s.preNumbers[c.Name] = number
		items = append(items, fmt.Sprintf("%s: pre #%d", c.Name, number))
	}

	result := report.OKResult(name, fmt.Sprintf("%d snapshot(s) created", len(items)), started)
	result.Items = items
	return result
}

// PostSnapshotStep pairs a post snapshot with every pre snapshot the run
// took.
func PostSnapshotStep() Step {
	return Step{Name: "post snapshots", Run: runPostSnapshots}
}

func runPostSnapshots(ctx context.Context, s *Session) report.Result {
	const name = "post snapshots"
	if len(s.preNumbers) == 0 {
		return report.SkipResult(name, "no pre snapshots to pair")
	}

	started := time.Now()
	configs := make([]string, 0, len(s.preNumbers))
	for configName := range s.preNumbers {
		configs = append(configs, configName)
	}
	sort.Strings(configs)

	var items []string
	for _, configName := range configs {
		pre := s.preNumbers[configName]
		number, err := snapshot.Create(ctx, s.Runner, configName, snapshot.Post, "archmaint post", pre)
		if err != nil {
			return report.FailResult(name, err, started)
		}
		items = append(items, fmt.Sprintf("%s: post #%d (pre #%d)", configName, number, pre))
	}

	result := report.OKResult(name, fmt.Sprintf("%d snapshot(s) created", len(items)), started)
	result.Items = items
	return result
}

// RepoUpdateStep checks and applies official repository updates, with the
// conflict watcher active for the duration of the transaction.
func RepoUpdateStep() Step {
	return Step{Name: "repo update", Run: runRepoUpdate}
}

func runRepoUpdate(ctx context.Context, s *Session) report.Result {
	const name = "repo update"
	if !s.Config.Update.Repo {
		return report.SkipResult(name, "disabled in configuration")
	}

	started := time.Now()
	updates, err := pacman.CheckUpdates(ctx, s.Runner)
	if err != nil {
		return report.FailResult(name, err, started)
	}
	if len(updates) == 0 {
		return report.OKResult(name, "everything up to date", started)
	}

	items := make([]string, 0, len(updates))
	for _, u := range updates {
		items = append(items, u.String())
	}

	if s.DryRun {
		result := report.SkipResult(name,
			dryRunDetail(fmt.Sprintf("would update %d package(s)", len(updates))))
		result.Items = items
		return result
	}

	if !s.Prompter.Confirm(fmt.Sprintf("Apply %d repository update(s)?", len(updates)), true) {
		result := report.SkipResult(name, "declined")
		result.Items = items
		return result
	}

	// Watch for pacnew/pacsave files the transaction produces; the
	// conflict step drains the watcher later.
	watcher, werr := pacfiles.Watch(ctx, s.Config.Pacfiles.Roots)
	if werr != nil {
		log := logging.GetLogger("maintain")
		log.Warn().Err(werr).Msg("Conflict watcher unavailable")
	} else {
		s.watcher = watcher
	}

	opts := pacman.UpgradeOptions{
		DownloadFirst: s.Config.Update.DownloadFirst,
		Ignore:        s.Excluded.Names(),
	}
	if err := pacman.Upgrade(ctx, s.Runner, opts); err != nil {
		return report.FailResult(name, err, started)
	}

	result := report.OKResult(name, fmt.Sprintf("%d package(s) updated", len(updates)), started)
	result.Items = items
	return result
}

// AURUpdateStep updates AUR packages through the detected helper.
func AURUpdateStep() Step {
	return Step{Name: "aur update", Run: runAURUpdate}
}

func runAURUpdate(ctx context.Context, s *Session) report.Result {
	const name = "aur update"
	if !s.Config.Update.AUR {
		return report.SkipResult(name, "disabled in configuration")
	}

	started := time.Now()
	helper, err := aur.Detect(s.Runner, s.Config.AUR.Helper)
	if err != nil {
		return report.SkipResult(name, "no AUR helper installed")
	}

	updates, err := helper.Updates(ctx)
	if err != nil {
		return report.FailResult(name, err, started)
	}
	if len(updates) == 0 {
		return report.OKResult(name, "everything up to date", started)
	}

	items := make([]string, 0, len(updates))
	for _, u := range updates {
		items = append(items, u.String())
	}

	if s.DryRun {
		result := report.SkipResult(name,
			dryRunDetail(fmt.Sprintf("would update %d AUR package(s) via %s", len(updates), helper.Name)))
		result.Items = items
		return result
	}

	if !s.Prompter.Confirm(fmt.Sprintf("Apply %d AUR update(s) via %s?", len(updates), helper.Name), true) {
		result := report.SkipResult(name, "declined")
		result.Items = items
		return result
	}

	if err := helper.Upgrade(ctx, s.Excluded.Names()); err != nil {
		return report.FailResult(name, err, started)
	}

	result := report.OKResult(name, fmt.Sprintf("%d package(s) updated", len(updates)), started)
	result.Items = items
	return result
}

// FlatpakUpdateStep updates flatpak applications and runtimes.
func FlatpakUpdateStep() Step {
	return Step{Name: "flatpak update", Run: runFlatpakUpdate}
}

func runFlatpakUpdate(ctx context.Context, s *Session) report.Result {
	const name = "flatpak update"
	if !s.Config.Update.Flatpak {
		return report.SkipResult(name, "disabled in configuration")
	}
	if !flatpak.Available(s.Runner) {
		return report.SkipResult(name, "flatpak not installed")
	}
	if s.DryRun {
		return report.SkipResult(name, dryRunDetail("would run flatpak update"))
	}

	started := time.Now()
	if err := flatpak.Update(ctx, s.Runner); err != nil {
		return report.FailResult(name, err, started)
	}
	return report.OKResult(name, "applications updated", started)
}

// OrphanStep removes packages installed as dependencies that nothing needs
// anymore, skipping excluded names.
func OrphanStep() Step {
	return Step{Name: "orphans", Run: runOrphans}
}

func runOrphans(ctx context.Context, s *Session) report.Result {
	const name = "orphans"
	if !s.Config.Clean.RemoveOrphans {
		return report.SkipResult(name, "disabled in configuration")
	}

	started := time.Now()
	orphans, err := pacman.Orphans(ctx, s.Runner)
	if err != nil {
		return report.FailResult(name, err, started)
	}
	orphans = exclude.Filter(orphans, s.Excluded.Names())
	if len(orphans) == 0 {
		return report.OKResult(name, "no orphaned packages", started)
	}

	if s.DryRun {
		result := report.SkipResult(name,
			dryRunDetail(fmt.Sprintf("would remove %d orphaned package(s)", len(orphans))))
		result.Items = orphans
		return result
	}

	if !s.Prompter.Confirm(fmt.Sprintf("Remove %d orphaned package(s)?", len(orphans)), true) {
		result := report.SkipResult(name, "declined")
		result.Items = orphans
		return result
	}

	if err := pacman.RemoveOrphans(ctx, s.Runner, orphans); err != nil {
		return report.FailResult(name, err, started)
	}

	result := report.OKResult(name, fmt.Sprintf("%d package(s) removed", len(orphans)), started)
	result.Items = orphans
	return result
}

// CacheStep trims the pacman package cache.
func CacheStep() Step {
	return Step{Name: "cache", Run: runCache}
}

func runCache(ctx context.Context, s *Session) report.Result {
	const name = "cache"
	keep := s.Config.Clean.CacheKeep

	if s.DryRun {
		return report.SkipResult(name,
			dryRunDetail(fmt.Sprintf("would trim cache to %d version(s) per package", keep)))
	}

	started := time.Now()
	if err := pacman.CleanCache(ctx, s.Runner, keep, s.Config.Clean.CleanUninstalled); err != nil {
		return report.FailResult(name, err, started)
	}
	return report.OKResult(name,
		fmt.Sprintf("cache trimmed to %d version(s) per package", keep), started)
}

// FlatpakUnusedStep removes flatpak runtimes nothing depends on.
func FlatpakUnusedStep() Step {
	return Step{Name: "flatpak unused", Run: runFlatpakUnused}
}

func runFlatpakUnused(ctx context.Context, s *Session) report.Result {
	const name = "flatpak unused"
	if !s.Config.Clean.FlatpakUnused {
		return report.SkipResult(name, "disabled in configuration")
	}
	if !flatpak.Available(s.Runner) {
		return report.SkipResult(name, "flatpak not installed")
	}
	if s.DryRun {
		return report.SkipResult(name, dryRunDetail("would run flatpak uninstall --unused"))
	}

	started := time.Now()
	if err := flatpak.RemoveUnused(ctx, s.Runner); err != nil {
		return report.FailResult(name, err, started)
	}
	return report.OKResult(name, "unused runtimes removed", started)
}

// PacfilesStep resolves pacnew/pacsave conflicts, both pre-existing ones and
// those the update transaction produced.
func PacfilesStep() Step {
	return Step{Name: "config conflicts", Run: runPacfiles}
}

func runPacfiles(ctx context.Context, s *Session) report.Result {
	const name = "config conflicts"
	started := time.Now()

	var conflicts []pacfiles.Conflict
	if s.watcher != nil {
		conflicts = s.watcher.Drain()
		s.watcher = nil
	}

	found, err := pacfiles.Find(s.Config.Pacfiles.Roots)
	if err != nil {
		return report.FailResult(name, err, started)
	}
	conflicts = dedupeConflicts(append(conflicts, found...))
	if len(conflicts) == 0 {
		return report.OKResult(name, "no pacnew/pacsave files", started)
	}

	items := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		items = append(items, c.Path)
	}

	if s.DryRun {
		result := report.Result{
			Name: name, Status: report.StatusWarn,
			Detail:   dryRunDetail(fmt.Sprintf("%d conflict(s) left unresolved", len(conflicts))),
			Duration: time.Since(started),
			Items:    items,
		}
		return result
	}

	tool, err := pacfiles.MergeTool(s.Runner, s.Config.Pacfiles.MergeTool)
	if err != nil {
		return report.Result{
			Name: name, Status: report.StatusWarn,
			Detail:   fmt.Sprintf("no merge tool, %d conflict(s) left unresolved", len(conflicts)),
			Duration: time.Since(started),
			Items:    items,
		}
	}

	outcomes, err := pacfiles.Resolve(ctx, s.Runner, s.Prompter, tool, conflicts)
	if err != nil {
		return report.FailResult(name, err, started)
	}

	var unresolved []string
	for _, o := range outcomes {
		if o.Action == pacfiles.Skipped {
			unresolved = append(unresolved, o.Conflict.Path)
		}
	}
	if len(unresolved) > 0 {
		return report.Result{
			Name: name, Status: report.StatusWarn,
			Detail:   fmt.Sprintf("%d of %d conflict(s) left unresolved", len(unresolved), len(conflicts)),
			Duration: time.Since(started),
			Items:    unresolved,
		}
	}

	result := report.OKResult(name, fmt.Sprintf("%d conflict(s) resolved", len(conflicts)), started)
	result.Items = items
	return result
}

// DiskHealthStep checks the SMART verdict of every (or each configured)
// disk. A failing disk turns the step into a warning, not a hard failure.
func DiskHealthStep() Step {
	return Step{Name: "disk health", Run: runDiskHealth}
}

func runDiskHealth(ctx context.Context, s *Session) report.Result {
	const name = "disk health"
	if !s.Config.Health.Enabled {
		return report.SkipResult(name, "disabled in configuration")
	}
	if !diskhealth.Available(s.Runner) {
		return report.SkipResult(name, "smartctl not installed")
	}

	started := time.Now()
	devices := s.Config.Health.Devices
	if len(devices) == 0 {
		var err error
		devices, err = diskhealth.Scan(ctx, s.Runner)
		if err != nil {
			return report.FailResult(name, err, started)
		}
	}
	if len(devices) == 0 {
		return report.SkipResult(name, "no SMART-capable devices found")
	}

	var items []string
	failing := 0
	for _, device := range devices {
		check, err := diskhealth.Check(ctx, s.Runner, device)
		if err != nil {
			return report.FailResult(name, err, started)
		}
		if check.Verdict == diskhealth.Failed {
			failing++
		}
		items = append(items, fmt.Sprintf("%s: %s", device, check.Verdict))
	}

	if failing > 0 {
		return report.Result{
			Name: name, Status: report.StatusWarn,
			Detail:   fmt.Sprintf("%d of %d device(s) failing", failing, len(devices)),
			Duration: time.Since(started),
			Items:    items,
		}
	}

	result := report.OKResult(name, fmt.Sprintf("%d device(s) passed", len(devices)), started)
	result.Items = items
	return result
}

// selectConfigs keeps only the named snapper configs; an empty filter keeps
// everything.
func selectConfigs(configs []snapshot.Config, names []string) []snapshot.Config {
	if len(names) == 0 {
		return configs
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var kept []snapshot.Config
	for _, c := range configs {
		if want[c.Name] {
			kept = append(kept, c)
		}
	}
	return kept
}

func configNames(configs []snapshot.Config) string {
	names := make([]string, 0, len(configs))
	for _, c := range configs {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func dedupeConflicts(conflicts []pacfiles.Conflict) []pacfiles.Conflict {
	seen := make(map[string]bool, len(conflicts))
	var out []pacfiles.Conflict
	for _, c := range conflicts {
		if seen[c.Path] {
			continue
		}
		seen[c.Path] = true
		out = append(out, c)
	}
	return out
}
