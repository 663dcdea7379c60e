// Package all links every bundled exercise into the registry with one
// import line, the way database drivers register themselves.
package all

import (
	_ "github.com/amar-at-iitm/primer/internal/exercise/bistro"
	_ "github.com/amar-at-iitm/primer/internal/exercise/faults"
	_ "github.com/amar-at-iitm/primer/internal/exercise/fib"
	_ "github.com/amar-at-iitm/primer/internal/exercise/guess"
	_ "github.com/amar-at-iitm/primer/internal/exercise/numstats"
	_ "github.com/amar-at-iitm/primer/internal/exercise/piglatin"
	_ "github.com/amar-at-iitm/primer/internal/exercise/roster"
	_ "github.com/amar-at-iitm/primer/internal/exercise/tempconv"
)
