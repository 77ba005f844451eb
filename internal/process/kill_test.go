package process

// Notes:
// - Only PIDs that cannot belong to a live process are exercised. Real
//   termination is observed through renderer Close in the root package.

import "testing"

func TestKillProcessGroup_IgnoresInvalidPIDs(t *testing.T) {
	t.Parallel()

	// 0 and negatives are guarded; sending to them would hit the test's
	// own process group or arbitrary processes.
	for _, pid := range []int{0, -1, -42} {
		KillProcessGroup(pid)
	}
}

func TestKillProcessGroup_NonexistentPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}
