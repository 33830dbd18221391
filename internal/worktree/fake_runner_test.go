package worktree

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// fakeRunner stubs git invocations. Stubs are keyed by a prefix of the
// joined argument list, so calls with run-generated tails (worktree names,
// timestamps) can still be matched.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string][]fakeResponse
	calls     []fakeCall
}

type fakeResponse struct {
	out string
	err error
}

type fakeCall struct {
	dir  string
	args []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: make(map[string][]fakeResponse),
	}
}

func (f *fakeRunner) stub(prefix string, out string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = append(f.responses[prefix], fakeResponse{out: out, err: err})
}

func (f *fakeRunner) Exec(ctx context.Context, dir string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{dir: dir, args: append([]string(nil), args...)})

	// Longest stubbed prefix with a response remaining wins.
	best, found := "", false
	for prefix, queue := range f.responses {
		if len(queue) > 0 && strings.HasPrefix(key, prefix) {
			if !found || len(prefix) > len(best) {
				best, found = prefix, true
			}
		}
	}
	if !found {
		return "", fmt.Errorf("unexpected git call: %s", key)
	}

	queue := f.responses[best]
	resp := queue[0]
	f.responses[best] = queue[1:]
	return resp.out, resp.err
}

func (f *fakeRunner) callsFor(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.calls {
		if strings.HasPrefix(strings.Join(call.args, " "), prefix) {
			count++
		}
	}
	return count
}

func (f *fakeRunner) lastCall(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if strings.HasPrefix(strings.Join(f.calls[i].args, " "), prefix) {
			return f.calls[i].args
		}
	}
	return nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
