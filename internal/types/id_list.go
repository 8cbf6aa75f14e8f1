// id_list.go
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
	"encoding/json"
	"errors"
)

var (
	ErrNotArray      = errors.New("must be an array")
	ErrNonNumericIDs = errors.New("all elements must be numbers")
)

// IDList is a JSON array of numeric identifiers. Unlike a plain []uint it
// tells apart "not an array" from "array with a bad element", and a missing
// field from an empty one.
type IDList struct {
	IDs   []uint
	Valid bool
	Err   error
}

func (l *IDList) UnmarshalJSON(data []byte) error {
	l.Valid = false
	l.IDs = nil
	l.Err = nil

	if len(data) == 0 || data[0] != '[' {
		l.Err = ErrNotArray
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		l.Err = ErrNotArray
		return nil
	}

	ids := make([]uint, 0, len(raw))
	for _, item := range raw {
		var id uint
		if err := json.Unmarshal(item, &id); err != nil {
			l.Err = ErrNonNumericIDs
			return nil
		}
		ids = append(ids, id)
	}

	l.IDs = ids
	l.Valid = true
	return nil
}

func (l IDList) MarshalJSON() ([]byte, error) {
	if l.IDs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.IDs)
}

// Check returns the parse problem, or ErrNotArray if the field was absent.
func (l IDList) Check() error {
	if l.Err != nil {
		return l.Err
	}
	if !l.Valid {
		return ErrNotArray
	}
	return nil
}
