// flex_int64.go
//
// Management-plane data service for the MParser collection fleet
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of mparser-center.
// mparser-center is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// mparser-center is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with mparser-center.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrNotInteger = errors.New("expected an integer or a numeric string")

// FlexInt64 is an integer field as the collectors send it: a number, a
// quoted number ("8080") or a whole float (8080.0). null and "" leave
// the value as it was, so a pointer field stays nil when the key is blank.
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	token := bytes.TrimSpace(data)
	if len(token) == 0 || bytes.Equal(token, []byte("null")) {
		return nil
	}

	text := string(token)
	if token[0] == '"' {
		if err := json.Unmarshal(token, &text); err != nil {
			return fmt.Errorf("%w: %s", ErrNotInteger, data)
		}
		if text = strings.TrimSpace(text); text == "" {
			return nil
		}
	}

	v, ok := parseWhole(text)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotInteger, data)
	}
	*f = FlexInt64(v)
	return nil
}

func parseWhole(text string) (int64, bool) {
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, true
	}
	fl, err := strconv.ParseFloat(text, 64)
	if err != nil || fl != math.Trunc(fl) || math.Abs(fl) > math.MaxInt64 {
		return 0, false
	}
	return int64(fl), true
}

func (f FlexInt64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(f), 10)), nil
}

func (f FlexInt64) Int64() int64 {
	return int64(f)
}
