package di

import "github.com/valkey-io/valkey-go"

// DataValkeyClient is a DI wrapper distinguishing the data store client from
// any other valkey.Client in the dependency graph.
type DataValkeyClient struct{ valkey.Client }
