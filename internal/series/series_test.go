package series

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func decimals(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func TestGenerateShape(t *testing.T) {
	g := NewGenerator(rand.NewPCG(1, 2))
	s := g.Generate(150)

	if len(s.Points) != Points {
		t.Fatalf("got %d points, want %d", len(s.Points), Points)
	}
	if !s.Synthetic {
		t.Error("generated series must be flagged synthetic")
	}
	if s.Seed != 150 {
		t.Errorf("Seed = %v, want 150", s.Seed)
	}
	if s.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be set")
	}
	for i, p := range s.Points {
		if want := strconv.Itoa(i) + ":00"; p.Time != want {
			t.Errorf("point %d label = %q, want %q", i, p.Time, want)
		}
		if d := decimals(p.Price); d > 2 {
			t.Errorf("point %d price %v has %d decimals", i, p.Price, d)
		}
		if p.Volume < 0 || p.Volume >= MaxVolume {
			t.Errorf("point %d volume %d out of [0, %d)", i, p.Volume, MaxVolume)
		}
	}
}

func TestGenerateStepBounds(t *testing.T) {
	g := NewGenerator(rand.NewPCG(7, 7))
	for run := 0; run < 50; run++ {
		s := g.Generate(100)
		prev := 100.0
		for i, p := range s.Points {
			// Rounding of both neighbours can widen the observed step by
			// at most one cent.
			if step := math.Abs(p.Price - prev); step > MaxStep+0.011 {
				t.Fatalf("run %d point %d step %v exceeds %v", run, i, step, MaxStep)
			}
			prev = p.Price
		}
	}
}

func TestGenerateDeterministicWithSource(t *testing.T) {
	a := NewGenerator(rand.NewPCG(42, 99)).Generate(250)
	b := NewGenerator(rand.NewPCG(42, 99)).Generate(250)
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a.Points[i], b.Points[i])
		}
	}
}

func TestGenerateUnseededVaries(t *testing.T) {
	a := NewGenerator(nil).Generate(100)
	b := NewGenerator(nil).Generate(100)
	same := true
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("two unseeded generators produced identical series")
	}
}

func TestGenerateConcurrent(t *testing.T) {
	g := NewGenerator(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s := g.Generate(10); len(s.Points) != Points {
				t.Errorf("got %d points", len(s.Points))
			}
		}()
	}
	wg.Wait()
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		150.004:  150.0,
		150.005:  150.01,
		-3.14159: -3.14,
		0:        0,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}
