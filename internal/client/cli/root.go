package cli

import "fmt"

func (a *App) getStatus() string {
	s := ""
	if a.email != "" {
		s = a.email + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
