package pathcore

import "errors"

// Sentinel errors surfaced by the map factory and by queries. An
// unreachable destination is not one of these: it is a normal outcome,
// reported through dedicated sentinel values (see Unreachable,
// Path.Empty, and the ok=false return of PositionAt), never through error.
var (
	// ErrBadParameters means a required callback was missing, or an
	// incompatible mode combination was requested (danger+fuel,
	// jumbo+danger, jumbo+fuel).
	ErrBadParameters = errors.New("pathcore: bad parameters")
	// ErrInvalidTile means a query referenced a tile outside the map.
	ErrInvalidTile = errors.New("pathcore: invalid tile")
	// ErrReentrance names a query attempted from inside a callback. No
	// Map method returns it: re-entrant calls are not detected, and their
	// behavior is undefined.
	ErrReentrance = errors.New("pathcore: re-entrant call into Map")
)
