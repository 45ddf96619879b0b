package project

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup (t.Chdir requires Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Error(err)
		}
	})
}

func TestNormalizeGitHubURL(t *testing.T) {
	cases := map[string]string{
		"git@github.com:example/feedana.git":  "https://github.com/example/feedana",
		"git@github.com:example/feedana":      "https://github.com/example/feedana",
		"https://github.com/example/feedana.git": "https://github.com/example/feedana",
		"https://github.com/example/feedana":     "https://github.com/example/feedana",
		"https://gitlab.com/example/feedana":     "https://gitlab.com/example/feedana",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeGitHubURL(in), "input %q", in)
	}
}

func TestHashStable(t *testing.T) {
	// Outside a git repository the hash falls back to the working
	// directory, so two calls from the same place must agree.
	chdir(t, t.TempDir())

	first := Hash()
	second := Hash()
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestGithubRemoteURLOutsideRepo(t *testing.T) {
	dir := t.TempDir()
	_, ok := githubRemoteURL(dir)
	assert.False(t, ok)
}
