package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyNamespace_RenamesDeclAndCallSites(t *testing.T) {
	fns := map[string]Function{
		"save": {Name: "save", Body: "async function save(data) { return write(data); }"},
		"write": {Name: "write", Body: "async function write(data) { return data; }"},
	}

	out := ApplyNamespace("store", fns)
	require.Contains(t, out, "store_save")
	require.Contains(t, out, "store_write")
	assert.Contains(t, out["store_save"].Body, "function store_save(data)")
	assert.Contains(t, out["store_save"].Body, "return store_write(data);")
	assert.Contains(t, out["store_write"].Body, "function store_write(data)")
}

func TestApplyNamespace_MethodCallsUntouched(t *testing.T) {
	fns := map[string]Function{
		"get": {Name: "get", Body: "function get(k) { return cache.get(k) || db.get(k); }"},
	}
	out := ApplyNamespace("kv", fns)
	body := out["kv_get"].Body
	assert.Contains(t, body, "function kv_get(k)")
	assert.Contains(t, body, "cache.get(k)")
	assert.Contains(t, body, "db.get(k)")
}

func TestApplyNamespace_AdjacentCalls(t *testing.T) {
	fns := map[string]Function{
		"f": {Name: "f", Body: "function f(x) { return f(f(x)); }"},
	}
	out := ApplyNamespace("m", fns)
	assert.Contains(t, out["m_f"].Body, "return m_f(m_f(x));")
}

func TestApplyNamespace_RecursiveCall(t *testing.T) {
	fns := map[string]Function{
		"walk": {Name: "walk", Body: "function walk(n) { if (n > 0) { walk(n - 1); } }"},
	}
	out := ApplyNamespace("tree", fns)
	assert.Contains(t, out["tree_walk"].Body, "function tree_walk(n)")
	assert.Contains(t, out["tree_walk"].Body, "tree_walk(n - 1);")
}

func TestApplyNamespace_ConstForm(t *testing.T) {
	fns := map[string]Function{
		"ping": {Name: "ping", Body: "const ping = async () => \"pong\";"},
	}
	out := ApplyNamespace("net", fns)
	assert.Equal(t, "const net_ping = async () => \"pong\";", out["net_ping"].Body)
}

func TestApplyNamespace_DistinctNamespacesNoCollision(t *testing.T) {
	// Same original name under two namespaces yields two distinct keys.
	a := ApplyNamespace("alpha", map[string]Function{
		"run": {Name: "run", Body: "function run() {}"},
	})
	b := ApplyNamespace("beta", map[string]Function{
		"run": {Name: "run", Body: "function run() {}"},
	})
	merged := make(map[string]Function)
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	require.Len(t, merged, 2)
	assert.Contains(t, merged, "alpha_run")
	assert.Contains(t, merged, "beta_run")
}
