// Package redis publishes run metrics to Redis and reads them back as a ports.HistoryStore.
package redis
