package fixtures

import (
	"context"

	"github.com/composetest/composetest/compose"
)

// TestingT is the subset of testing.T the fixture helpers need. Using an
// interface keeps them usable from TestMain wrappers and custom test drivers.
type TestingT interface {
	Errorf(format string, args ...interface{})
	FailNow()
	Cleanup(func())
}

// PerTest acquires the service group for the duration of one test. Teardown is
// registered with t.Cleanup, so it runs on every exit path, including failures
// and FailNow. Stopping the containers after each test destroys their local
// storage; the next test starts from a clean slate at the cost of fresh
// containers.
//
// Any acquisition failure is fatal to the test.
func PerTest(t TestingT, m *Manager) *Group {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	group, err := m.Acquire(context.Background())
	if err != nil {
		t.Errorf("acquiring compose fixture: %s", err)
		t.FailNow()
		return nil
	}
	t.Cleanup(func() {
		if err := m.Release(context.Background(), group); err != nil {
			t.Errorf("releasing compose fixture: %s", err)
		}
	})
	return group
}

// PerTestEndpoints is PerTest reduced to the endpoint mapping, for tests that
// only need to know where to connect.
func PerTestEndpoints(t TestingT, m *Manager) map[string][]compose.Endpoint {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	group := PerTest(t, m)
	if group == nil {
		return nil
	}
	return group.Endpoints()
}

// GroupFixture returns a fixture function bound to m. The caller chooses the
// scope by choosing where to invoke it: per test, per subtest, or once from a
// suite-level wrapper. Every container in the returned group carries its
// resolved endpoint list in NetworkInfo.
func GroupFixture(m *Manager) func(TestingT) *Group {
	return func(t TestingT) *Group {
		if h, ok := t.(interface{ Helper() }); ok {
			h.Helper()
		}
		return PerTest(t, m)
	}
}
