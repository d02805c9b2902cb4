package component

import (
	"context"
	"errors"
	"testing"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(context.Context) error {
	if f.events != nil {
		*f.events = append(*f.events, "start:"+f.name)
	}
	return f.startErr
}

func (f *fakeComponent) Stop(context.Context) error {
	if f.events != nil {
		*f.events = append(*f.events, "stop:"+f.name)
	}
	return f.stopErr
}

func (f *fakeComponent) Health(context.Context) Health { return f.health }

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegistry_RegisterAndAll(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeComponent{name: "observability"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(&fakeComponent{name: "observability"}); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	all := r.All()
	if len(all) != 1 || all[0].Name() != "observability" {
		t.Fatalf("unexpected components %v", all)
	}
	all[0] = nil
	if r.All()[0] == nil {
		t.Error("All must return a copy")
	}
}

func TestRegistry_StartAllSkipsRunning(t *testing.T) {
	var events []string
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "observability", events: &events})

	ctx := context.Background()
	_ = r.StartAll(ctx)
	_ = r.StartAll(ctx)
	_ = r.StopAll(ctx)
	_ = r.StopAll(ctx)

	want := []string{"start:observability", "stop:observability"}
	if !equal(events, want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestRegistry_Lifecycle(t *testing.T) {
	var events []string
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "observability", events: &events})
	_ = r.Register(&fakeComponent{name: "http-server", events: &events})

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{"start:observability", "start:http-server", "stop:http-server", "stop:observability"}
	if !equal(events, want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestRegistry_StartFailureStopsStartedOnly(t *testing.T) {
	var events []string
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "observability", events: &events})
	_ = r.Register(&fakeComponent{name: "http-server", events: &events, startErr: errors.New("address in use")})
	_ = r.Register(&fakeComponent{name: "never", events: &events})

	ctx := context.Background()
	if err := r.StartAll(ctx); err == nil {
		t.Fatal("expected StartAll to fail")
	}
	_ = r.StopAll(ctx)

	want := []string{"start:observability", "start:http-server", "stop:observability"}
	if !equal(events, want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestRegistry_StopErrorsJoined(t *testing.T) {
	r := NewRegistry()
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	_ = r.Register(&fakeComponent{name: "a", stopErr: errA})
	_ = r.Register(&fakeComponent{name: "b", stopErr: errB})

	ctx := context.Background()
	_ = r.StartAll(ctx)
	err := r.StopAll(ctx)
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both stop errors, got %v", err)
	}
}

func TestRegistry_HealthAll(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "a", health: Health{Name: "a", Status: StatusHealthy}})
	_ = r.Register(&fakeComponent{name: "b", health: Health{Name: "b", Status: StatusDegraded, Message: "exporters not running"}})

	hs := r.HealthAll(context.Background())
	if len(hs) != 2 || hs[0].Name != "a" || hs[1].Status != StatusDegraded {
		t.Errorf("unexpected health: %+v", hs)
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name string
		in   []Health
		want HealthStatus
	}{
		{"none", nil, StatusHealthy},
		{"all healthy", []Health{{Status: StatusHealthy}, {Status: StatusHealthy}}, StatusHealthy},
		{"degraded", []Health{{Status: StatusHealthy}, {Status: StatusDegraded}}, StatusDegraded},
		{"unhealthy wins", []Health{{Status: StatusUnhealthy}, {Status: StatusDegraded}}, StatusUnhealthy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overall(tc.in); got != tc.want {
				t.Errorf("Overall() = %s, want %s", got, tc.want)
			}
		})
	}
}
