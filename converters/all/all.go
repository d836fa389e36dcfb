package all

import (
	// Import all the converters so they register themselves
	_ "github.com/darianmavgo/mkinsert/converters/csv"
	_ "github.com/darianmavgo/mkinsert/converters/excel"
	_ "github.com/darianmavgo/mkinsert/converters/html"
	_ "github.com/darianmavgo/mkinsert/converters/markdown"
)
