package spin

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qsimlab/spindle/internal/domain"
	"github.com/qsimlab/spindle/pkg/superposition"
)

func TestNew_InitialState(t *testing.T) {
	for _, size := range []int{1, 2, 5} {
		s, err := New(size, zerolog.Nop())
		if err != nil {
			t.Fatalf("New(%d) returned error: %v", size, err)
		}
		if !superposition.Equal(s.Superposition(), superposition.Superposition[int]{0: 1}) {
			t.Errorf("New(%d) initial superposition = %v, want {0: 1}", size, s.Superposition())
		}
	}
}

func TestNew_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size, zerolog.Nop()); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("New(%d) error = %v, want ErrInvalidArgument", size, err)
		}
	}
}

func TestSz_SingleSpin(t *testing.T) {
	tests := []struct {
		name  string
		power int
		want  superposition.Superposition[int]
	}{
		{
			name:  "one flip reaches the excited state",
			power: 1,
			want:  superposition.Superposition[int]{1: 1},
		},
		{
			name:  "two flips return to the origin",
			power: 2,
			want:  superposition.Superposition[int]{0: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(1, zerolog.Nop())
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Sz(tt.power); err != nil {
				t.Fatalf("Sz(%d) returned error: %v", tt.power, err)
			}
			if !superposition.Equal(s.Superposition(), tt.want) {
				t.Errorf("Sz(%d) state = %v, want %v", tt.power, s.Superposition(), tt.want)
			}
		})
	}
}

func TestSz_TwoSpinsInterference(t *testing.T) {
	s, err := New(2, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	// Step 1: {0:1} expands to one term per flipped bit.
	if err := s.Sz(1); err != nil {
		t.Fatal(err)
	}
	want := superposition.Superposition[int]{1: 1, 2: 1}
	if !superposition.Equal(s.Superposition(), want) {
		t.Fatalf("After first step state = %v, want %v", s.Superposition(), want)
	}

	// Step 2: the paths 1->0 and 2->0 collide and accumulate, as do 1->3
	// and 2->3.
	if err := s.Sz(1); err != nil {
		t.Fatal(err)
	}
	want = superposition.Superposition[int]{0: 2, 3: 2}
	if !superposition.Equal(s.Superposition(), want) {
		t.Errorf("After second step state = %v, want %v", s.Superposition(), want)
	}
}

func TestSz_RepeatedEqualsSequential(t *testing.T) {
	a, _ := New(3, zerolog.Nop())
	if err := a.Sz(3); err != nil {
		t.Fatal(err)
	}

	b, _ := New(3, zerolog.Nop())
	for i := 0; i < 3; i++ {
		if err := b.Sz(1); err != nil {
			t.Fatal(err)
		}
	}

	if !superposition.Equal(a.Superposition(), b.Superposition()) {
		t.Errorf("Sz(3) = %v, three Sz(1) applications = %v", a.Superposition(), b.Superposition())
	}
}

func TestSz_InvalidPower(t *testing.T) {
	s, err := New(2, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	before := s.Superposition().Clone()

	for _, power := range []int{0, -2} {
		if err := s.Sz(power); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("Sz(%d) error = %v, want ErrInvalidArgument", power, err)
		}
	}
	if !superposition.Equal(s.Superposition(), before) {
		t.Error("Invalid Sz call mutated the state")
	}
}
