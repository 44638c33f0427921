//go:build !windows && !darwin

package window

func openerCommand(raw string) []string {
	return []string{"xdg-open", raw}
}
