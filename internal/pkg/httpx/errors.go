package httpx

import "errors"

var errTrailingData = errors.New("request body must contain a single JSON object")
