package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "file:complete_graph_data.json")
	p.OnLoadComplete(ctx, "file:complete_graph_data.json", 120, time.Second, nil)
	p.OnBuildComplete(ctx, 120, 340, 2, time.Millisecond, nil)
	p.OnLayoutStart(ctx, "spring", 120)
	p.OnLayoutComplete(ctx, "spring", time.Second, nil)
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", time.Second, errors.New("boom"))

	q := NoopQueryHooks{}
	q.OnPathQuery(ctx, "Ada", "Cy", "found", time.Microsecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "layout", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "example.com", "/graph.json")
	h.OnResponse(ctx, "GET", "example.com", "/graph.json", 200, time.Second)
	h.OnError(ctx, "GET", "example.com", "/graph.json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Query().(NoopQueryHooks); !ok {
		t.Error("Query() should return NoopQueryHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customQuery := &recordingQueryHooks{}
	SetQueryHooks(customQuery)
	Query().OnPathQuery(context.Background(), "A", "B", "no_path", 0, nil)
	if len(customQuery.outcomes) != 1 || customQuery.outcomes[0] != "no_path" {
		t.Errorf("query hook not invoked, got %v", customQuery.outcomes)
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Query().(NoopQueryHooks); !ok {
		t.Error("Reset() should restore NoopQueryHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

type recordingQueryHooks struct {
	NoopQueryHooks
	outcomes []string
}

func (r *recordingQueryHooks) OnPathQuery(_ context.Context, _, _, outcome string, _ time.Duration, _ error) {
	r.outcomes = append(r.outcomes, outcome)
}
