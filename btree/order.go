package btree

import "encoding/binary"

// defaultOrder is the byte order used for every archived field in this
// package, matching archive.DefaultConfig(). All archives this package
// reads and writes must use little-endian, process-wide, per this
// module's process-wide-configuration contract.
var defaultOrder = binary.LittleEndian
