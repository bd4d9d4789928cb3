package history

import (
	"fmt"

	"github.com/huangsam/relgate/schema"
)

// PrintHistoryStatus prints decision history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Decisions: %d\n", status.TotalDecisions)
	if status.TotalDecisions > 0 {
		fmt.Printf("Releases Needed: %d\n", status.ReleasesNeeded)
		fmt.Printf("Last Decision: %s\n", status.LastDecisionTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Decision: %s\n", status.OldestDecisionTime.Format("2006-01-02 15:04:05"))
	}
}
