//go:build darwin

package window

func openerCommand(raw string) []string {
	return []string{"open", raw}
}
