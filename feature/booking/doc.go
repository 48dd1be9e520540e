// Package booking loads booking system records from the sources the
// reconciler supports: CSV exports, JSON exports, objects in the storage
// bucket, and the booking database itself.
//
// Loaders never interpret attribute names. Whatever column headers or JSON
// keys a booking schema uses are carried verbatim into the record's
// attribute map, the field resolver maps them onto canonical fields later.
// The only attribute loaders look for themselves is the trade identifier,
// resolved from a small list of conventional names.
package booking
