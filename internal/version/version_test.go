/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import "testing"

func TestFull(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })

	Version = "v1.2.0"
	GitCommit = "0123456789abcdef"
	if got := Full(); got != "v1.2.0 (commit: 0123456)" {
		t.Errorf("Full() = %q", got)
	}

	GitCommit = "unknown"
	if got := Full(); got != "v1.2.0" {
		t.Errorf("Full() = %q", got)
	}
	if Info()["version"] != "v1.2.0" {
		t.Errorf("Info() = %v", Info())
	}
}
