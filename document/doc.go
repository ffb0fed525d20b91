// Package document decodes configuration documents into a generic ordered
// tree of mappings, sequences, and scalars.
//
// YAML documents are read with goccy/go-yaml and HCL documents with
// hashicorp/hcl. In both, every node keeps the line and column it came
// from so that later errors can point into the source. Mapping keys keep
// their document order.
//
// In HCL, blocks become mappings keyed by block type (and then by each
// label), attributes become entries, and any attribute expression that is
// not a literal is kept verbatim as source text:
//
//	laser {
//	  a0         = 5
//	  wavelength = 0.8 * micro
//	}
package document
