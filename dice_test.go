package yatzy

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestNewDiceSortsAndValidates(t *testing.T) {
	tests := []struct {
		desc    string
		input   [NumDice]Die
		want    Dice
		wantErr error
	}{
		{
			desc:  "already sorted",
			input: [NumDice]Die{1, 2, 3, 4, 5},
			want:  Dice{1, 2, 3, 4, 5},
		},
		{
			desc:  "unsorted",
			input: [NumDice]Die{5, 1, 3, 2, 4},
			want:  Dice{1, 2, 3, 4, 5},
		},
		{
			desc:  "duplicates",
			input: [NumDice]Die{6, 6, 6, 6, 6},
			want:  Dice{6, 6, 6, 6, 6},
		},
		{
			desc:    "zero is invalid",
			input:   [NumDice]Die{0, 1, 2, 3, 4},
			wantErr: ErrInvalidDieValue,
		},
		{
			desc:    "seven is invalid",
			input:   [NumDice]Die{1, 2, 3, 4, 7},
			wantErr: ErrInvalidDieValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := NewDice(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewDice(%v) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDice(%v) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NewDice(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDiceReplace(t *testing.T) {
	d := Dice{1, 1, 2, 3, 4}

	got, err := d.Replace([]Die{1, 2}, []Die{6, 6})
	if err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}
	want := Dice{1, 3, 4, 6, 6}
	if got != want {
		t.Errorf("Replace(%v) = %v, want %v", d, got, want)
	}

	if _, err := d.Replace([]Die{5}, []Die{6}); !errors.Is(err, ErrInvalidDice) {
		t.Errorf("Replace with an unheld value: got err %v, want ErrInvalidDice", err)
	}

	if _, err := d.Replace([]Die{1, 2}, []Die{6}); err == nil {
		t.Error("Replace with mismatched lengths: want error, got nil")
	}
}

func TestDiceRetainedAfter(t *testing.T) {
	d := Dice{1, 1, 2, 3, 6}

	got := d.retainedAfter([]Die{1, 6})
	gotCounts := got.counts()
	if gotCounts[1] != 1 || gotCounts[2] != 1 || gotCounts[3] != 1 || gotCounts[6] != 0 {
		t.Errorf("retainedAfter([1,6]) = %v, counts = %v", got, gotCounts)
	}
}

func TestRerollProducesValidHand(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	d := NewRandomDice(rng)

	for i := 0; i < 100; i++ {
		next, err := d.Reroll([]Die{d[0]}, rng)
		if err != nil {
			t.Fatalf("Reroll failed: %v", err)
		}
		for _, v := range next {
			if v < 1 || v > NumSides {
				t.Fatalf("Reroll produced out-of-range die: %v", next)
			}
		}
		d = next
	}
}
