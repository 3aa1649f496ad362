package clt

import "errors"

//Validation failures are detected at construction or query submission and
//wrap one of these sentinels.
var (
	//ErrInvalidParameter reports an out-of-range construction parameter,
	//such as a non-positive smoothing constant or a root index outside the
	//variable range.
	ErrInvalidParameter = errors.New("invalid parameter")

	//ErrInvalidInput reports malformed data, such as a non-binary dataset
	//entry or a query of the wrong width.
	ErrInvalidInput = errors.New("invalid input")
)
