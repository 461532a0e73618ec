// Package init triggers VCS provider registration via import side-effects.
//
//	import _ "github.com/sanix-darker/ghrev/internal/vcs/init"
package init

import (
	_ "github.com/sanix-darker/ghrev/internal/vcs/github"
)
