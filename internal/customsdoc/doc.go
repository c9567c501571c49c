// Package customsdoc builds the consolidated customs import document.
//
// Assembly and serialization are separate steps. Assemble maps a master bill
// and its declarations onto a typed Node tree whose shape matches the
// government schema; Marshal turns any tree into XML text. Neither step does
// I/O, so the same inputs always produce the same bytes.
//
// All constant fields of the schema (regime, currency, country and category
// codes) live in constants.go and are not configurable.
package customsdoc
