// Package cfqueue pulls inbound newsletter notifications from a Cloudflare
// queue over the REST pull-consumer API and acknowledges them once handled.
package cfqueue
