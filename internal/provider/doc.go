// Package provider implements the upstream Anthropic Messages client and the
// translator that converts its streaming SSE responses into normalized token
// records.
package provider
