package matchcmd

// Message constants
const (
	MsgShort = "Map an AUR or flatpak identifier to repository package names"
	MsgLong  = `Match shows how an identifier resolves against the official repository
package list. Flatpak reverse-DNS identifiers are reduced to their last
segment and common AUR suffixes (-bin, -git, -appimage) are stripped
before matching, then exact, substring and fuzzy candidates are ranked.

Without an argument, every installed foreign (AUR) package and flatpak
application is mapped to its best repository candidate.

This is the same matcher the exclude command uses to flag typos.`

	MsgExample = `  archmaint match org.mozilla.firefox
  archmaint match spotify-bin
  archmaint match visual-studio-code --limit 10

  # Map everything installed from outside the repositories
  archmaint match`
)
