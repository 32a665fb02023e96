package ltc2983

import "fmt"

// Channel identifies one of the 20 measurement inputs of the LTC2983.
type Channel int

const (
	firstChannel Channel = 1
	lastChannel  Channel = 20
)

// Valid reports whether c is a usable channel number (1..20).
func (c Channel) Valid() bool {
	return c >= firstChannel && c <= lastChannel
}

func checkChannel(c Channel) error {
	if !c.Valid() {
		return fmt.Errorf("ltc2983: channel %d: %w", c, ErrInvalidChannel)
	}
	return nil
}

// AssignmentAddress returns the base address of the channel's 32-bit
// assignment word. Assignment words live in a contiguous block starting at
// 0x200, 4 bytes per channel.
func AssignmentAddress(c Channel) (uint16, error) {
	if err := checkChannel(c); err != nil {
		return 0, err
	}
	return assignmentBase + channelStride*uint16(c-1), nil
}

// ResultAddress returns the base address of the channel's 32-bit conversion
// result. Results live in a contiguous block starting at 0x010, 4 bytes per
// channel.
func ResultAddress(c Channel) (uint16, error) {
	if err := checkChannel(c); err != nil {
		return 0, err
	}
	return resultBase + channelStride*uint16(c-1), nil
}
