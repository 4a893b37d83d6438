package util

import "errors"

var ErrNoExtractableText = errors.New("no extractable text found in PDF")
