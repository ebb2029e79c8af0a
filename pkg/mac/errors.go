package mac

//
// Copyright 2020 Telenor Digital AS
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
import "errors"

var (
	// ErrEmptyInput is returned when the input is empty, whitespace only or
	// an absent (NULL) value.
	ErrEmptyInput = errors.New("empty input")
	// ErrWrongLength is returned when a binary address isn't exactly 6 bytes.
	ErrWrongLength = errors.New("wrong length")
	// ErrMalformed is returned when a textual address can't be interpreted
	// as any of the supported notations.
	ErrMalformed = errors.New("malformed address")
	// ErrUnknownFormat is returned for format selectors outside the
	// supported set.
	ErrUnknownFormat = errors.New("unknown format")
)
