// package models defines the data model for the feed synchronization service
package models
