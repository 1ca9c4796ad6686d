package paint

import (
	"testing"

	"github.com/hubastard/sprig/engine/colors"
)

func TestNewStatePushesDefaults(t *testing.T) {
	rec := &Recorder{}
	s := NewState(rec)

	if !s.IsDefault() {
		t.Fatalf("new state not default: color=%v blend=%v", s.Color(), s.Blend())
	}
	if len(rec.Calls) != 2 {
		t.Fatalf("expected 2 calls on init, got %d", len(rec.Calls))
	}
	if c, _ := rec.Last(CallSetColor); c.Color != colors.White {
		t.Errorf("pipeline color = %v, want white", c.Color)
	}
	if c, _ := rec.Last(CallSetBlend); c.Blend != DefaultBlend {
		t.Errorf("pipeline blend = %v, want %v", c.Blend, DefaultBlend)
	}
	if s.Stats() != (Statistics{}) {
		t.Errorf("init should not count towards stats, got %+v", s.Stats())
	}
}

func TestStateForwardsAndTracks(t *testing.T) {
	rec := &Recorder{}
	s := NewState(rec)
	rec.Reset()

	s.BindTexture(7)
	s.SetBlend(AdditiveBlend)
	s.SetColor(colors.Red)
	s.Submit(Quad{})

	if s.Texture() != 7 || s.Blend() != AdditiveBlend || s.Color() != colors.Red {
		t.Fatalf("state not tracked: tex=%d blend=%v color=%v", s.Texture(), s.Blend(), s.Color())
	}
	if s.IsDefault() {
		t.Fatal("state should not be default after changes")
	}
	want := []CallKind{CallBindTexture, CallSetBlend, CallSetColor, CallSubmitQuad}
	if len(rec.Calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(rec.Calls), len(want))
	}
	for i, k := range want {
		if rec.Calls[i].Kind != k {
			t.Errorf("call %d = %s, want %s", i, rec.Calls[i].Kind, k)
		}
	}

	st := s.Stats()
	if st.QuadCount != 1 || st.TextureBinds != 1 || st.ColorChanges != 1 || st.BlendChanges != 1 {
		t.Errorf("unexpected stats %+v", st)
	}
	if st.TotalVertexCount() != 4 {
		t.Errorf("TotalVertexCount = %d, want 4", st.TotalVertexCount())
	}

	s.Restore()
	if !s.IsDefault() {
		t.Error("Restore did not return to default")
	}
	s.ResetStats()
	if s.Stats() != (Statistics{}) {
		t.Error("ResetStats did not clear")
	}
}

func TestParseBlend(t *testing.T) {
	tests := []struct {
		in   string
		want Blend
		err  bool
	}{
		{"", DefaultBlend, false},
		{"alpha", DefaultBlend, false},
		{"add", AdditiveBlend, false},
		{"opaque", OpaqueBlend, false},
		{"dst_color/zero", Blend{DstColor, Zero}, false},
		{"src_alpha/one", AdditiveBlend, false},
		{"bogus", Blend{}, true},
		{"one/bogus", Blend{}, true},
	}
	for _, tt := range tests {
		got, err := ParseBlend(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseBlend(%q) err = %v, want err %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBlend(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuadBounds(t *testing.T) {
	q := Quad{{X: 5, Y: -1}, {X: 9, Y: 2}, {X: 4, Y: 8}, {X: 1, Y: 3}}
	minX, minY, maxX, maxY := q.Bounds()
	if minX != 1 || minY != -1 || maxX != 9 || maxY != 8 {
		t.Errorf("Bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
}
