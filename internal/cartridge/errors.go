package cartridge

import "errors"

// Error taxonomy for cartridge loading. The running emulator never produces
// an error of its own once a cartridge has loaded successfully; only the
// loader can fail.
var (
	ErrBadMagic          = errors.New("cartridge: bad iNES magic")
	ErrUnsupportedMapper = errors.New("cartridge: unsupported mapper")
	ErrOutOfMemory       = errors.New("cartridge: bank allocation failed")
	ErrIO                = errors.New("cartridge: read failed")
	ErrInvalidArgument   = errors.New("cartridge: invalid argument")
)
