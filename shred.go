/*
Package shred implements record shredding for columnar storage: the values of
a column are stored as a dense null-free array next to the definition and
repetition levels that record where nulls and record boundaries were.

Shredding

PackNulls and UnpackNulls translate between logical value slots and the dense
arrays stored in columns. A Column binds a Field, an Array of defined values,
and the levels describing them; Shred builds one from a flat sequence of
values.

Files

Columns serialize as self-describing data pages with PageWriter and
PageReader, and as files of column chunks with Writer and OpenFile. Page
headers and file footers are thrift-compact metadata, and page data is
compressed with the codec configured on the writer.
*/
package shred
