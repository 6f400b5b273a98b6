package swisstable

import "encoding/binary"

// defaultOrder is the byte order used for every archived field in this
// package, matching archive.DefaultConfig().
var defaultOrder = binary.LittleEndian
