// Package catalog declares every search parameter the loader recognizes.
//
// The allow-list lives in an embedded HCL document (params.hcl). Each
// parameter declares its kind, the literal default written to
// template files, and the comment shown beside it. The same document drives
// three consumers:
//
//   - the params loader, which rejects keys missing from the catalog and
//     dispatches values to a parser chosen by kind;
//   - the params set, which is seeded with every default;
//   - the template writer, which lays out sections, comments and the enzyme
//     table in declaration order.
//
// Comments are HCL templates. They are evaluated against the build limits in
// limits.go, so "(max ${max_threads})" always reflects the compiled value.
package catalog
