/*
 * errors.go, part of chemkit.
 *
 * Copyright 2013 Timo Strunk
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemkit

//Error is the interface implemented by the errors of this library that
//cross package boundaries. Decorate adds information (normally, the name
//of the function passing the error up) without changing the error's type.
type Error interface {
	Error() string
	Decorate(string) []string
}

//CError is the concrete error of the chemkit packages.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds dec to the decoration slice, unless dec is empty,
//and returns the current decoration slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//NewError builds a CError with the given message.
func NewError(msg string) *CError {
	return &CError{msg: msg}
}
