//go:build windows

package window

func openerCommand(raw string) []string {
	return []string{"rundll32", "url.dll,FileProtocolHandler", raw}
}
