// Package vcf reconstructs structured contact records from a BusyContacts
// VCF export: a streaming line classifier plus a stateful record assembler
// that merges folded continuation lines, decodes the field-specific
// encodings (addresses, folded notes, inline photos, compact birthdays,
// custom and social-profile fields) and disambiguates repeated fields.
//
// The package implements the concrete subset of the format the exporter
// emits, not the full vCard grammar.
package vcf
