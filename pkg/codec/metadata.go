package codec

import "github.com/verdant-robotics/cbuf/pkg/schema"

// MetadataHash is the fixed hash of the ambient cbufmsg::metadata struct
// (spec §4.7). Every cbuf-speaking system agrees on this hash without it
// ever appearing in source text, so a decoder must recognize it even when
// the caller's schema index never declared it.
const MetadataHash uint64 = 0xBE6738D544AB72C6

// MetadataEntity is the built-in struct definition backing MetadataHash:
//
//	struct metadata {
//	    uint64_t msg_hash;
//	    std::string msg_name;
//	    std::string msg_meta;
//	}
var MetadataEntity = &schema.Entity{
	Name:          "metadata",
	QualifiedName: "cbufmsg::metadata",
	Namespaces:    []string{"cbufmsg"},
	HashValue:     MetadataHash,
	Definitions: []*schema.Field{
		{Name: "msg_hash", Type: schema.Uint64},
		{Name: "msg_name", Type: schema.String},
		{Name: "msg_meta", Type: schema.String},
	},
}
