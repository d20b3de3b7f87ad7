package pgiban

import "context"

// Approver handles user interaction for destructive operations,
// i.e. dropping the pgiban objects (and every column typed with the domain).
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the schema name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before uninstalling from target.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, target string) (bool, error)
}
