package ltc2983

import (
	"errors"
	"testing"
)

// Address tables straight from the datasheet.
var assignmentAddresses = map[Channel]uint16{
	1: 0x200, 2: 0x204, 3: 0x208, 4: 0x20C, 5: 0x210,
	6: 0x214, 7: 0x218, 8: 0x21C, 9: 0x220, 10: 0x224,
	11: 0x228, 12: 0x22C, 13: 0x230, 14: 0x234, 15: 0x238,
	16: 0x23C, 17: 0x240, 18: 0x244, 19: 0x248, 20: 0x24C,
}

var resultAddresses = map[Channel]uint16{
	1: 0x010, 2: 0x014, 3: 0x018, 4: 0x01C, 5: 0x020,
	6: 0x024, 7: 0x028, 8: 0x02C, 9: 0x030, 10: 0x034,
	11: 0x038, 12: 0x03C, 13: 0x040, 14: 0x044, 15: 0x048,
	16: 0x04C, 17: 0x050, 18: 0x054, 19: 0x058, 20: 0x05C,
}

func TestAssignmentAddress(t *testing.T) {
	for c, want := range assignmentAddresses {
		got, err := AssignmentAddress(c)
		if err != nil {
			t.Fatalf("AssignmentAddress(%d): %v", c, err)
		}
		if got != want {
			t.Errorf("AssignmentAddress(%d) = %#03x, want %#03x", c, got, want)
		}
	}
}

func TestResultAddress(t *testing.T) {
	for c, want := range resultAddresses {
		got, err := ResultAddress(c)
		if err != nil {
			t.Fatalf("ResultAddress(%d): %v", c, err)
		}
		if got != want {
			t.Errorf("ResultAddress(%d) = %#03x, want %#03x", c, got, want)
		}
	}
}

func TestChannelBounds(t *testing.T) {
	for _, c := range []Channel{-1, 0, 21, 32} {
		if _, err := AssignmentAddress(c); !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("AssignmentAddress(%d) = %v, want ErrInvalidChannel", c, err)
		}
		if _, err := ResultAddress(c); !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("ResultAddress(%d) = %v, want ErrInvalidChannel", c, err)
		}
	}
	for _, c := range []Channel{1, 20} {
		if _, err := AssignmentAddress(c); err != nil {
			t.Errorf("AssignmentAddress(%d): %v", c, err)
		}
		if _, err := ResultAddress(c); err != nil {
			t.Errorf("ResultAddress(%d): %v", c, err)
		}
	}
}
