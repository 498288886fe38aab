package shell

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/juruen/digitrec/session"
)

// Notifier prints the outcome of automatic predictions to w. The returned
// func is safe to call from timer goroutines.
func Notifier(w io.Writer, jsonOutput bool) func(session.Notice) {
	var mu sync.Mutex
	return func(n session.Notice) {
		mu.Lock()
		defer mu.Unlock()

		if n.Err != nil {
			fmt.Fprintf(w, "\nauto predict (%s) failed: %v\n", n.Trigger, n.Err)
			return
		}
		if n.Result == nil {
			return
		}

		if jsonOutput {
			output, err := json.Marshal(ResultToJSON(n.Result))
			if err != nil {
				fmt.Fprintf(w, "\nauto predict (%s): %v\n", n.Trigger, err)
				return
			}
			fmt.Fprintln(w, string(output))
			return
		}
		fmt.Fprintf(w, "\nauto predict (%s)\n%s", n.Trigger, FormatResult(n.Result))
	}
}
