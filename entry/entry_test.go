package entry

import (
	"testing"
	"time"
)

func TestEraseKeepsFields(t *testing.T) {
	at := time.Unix(1700000000, 42)
	e := New("k", 7, at)
	er := e.Erase()
	if er.Key != "k" || er.UpdateTime != at {
		t.Fatalf("erase changed metadata: %+v", er)
	}
	if v, ok := er.Value.(int); !ok || v != 7 {
		t.Fatalf("erase changed value: %#v", er.Value)
	}
}

func TestAge(t *testing.T) {
	at := time.Unix(100, 0)
	e := New("k", "v", at)
	if got := e.Age(time.Unix(130, 0)); got != 30*time.Second {
		t.Fatalf("age=%v want 30s", got)
	}
}
