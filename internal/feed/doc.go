// Package feed renders the podcast RSS documents, one aggregate feed plus a
// feed per newsletter, and publishes them to object storage.
package feed
