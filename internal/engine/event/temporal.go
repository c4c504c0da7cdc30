package event

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// temporalParser recognizes English natural-language date expressions.
var temporalParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ResolveTemporal interprets a temporal marker ("yesterday", "next week",
// "on Monday") relative to ref. ok is false when the marker carries no
// recognizable date.
func ResolveTemporal(marker string, ref time.Time) (time.Time, bool) {
	r, err := temporalParser.Parse(marker, ref)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	return r.Time, true
}
