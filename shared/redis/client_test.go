package redis

import "testing"

func TestClientOptions(t *testing.T) {
	tests := []struct {
		name         string
		addr         string
		password     string
		db           int
		wantAddr     string
		wantPassword string
		wantDB       int
		wantTLS      bool
		wantErr      bool
	}{
		{name: "host and port", addr: "localhost:6379", password: "pw", db: 2, wantAddr: "localhost:6379", wantPassword: "pw", wantDB: 2},
		{name: "url carries everything", addr: "redis://:secret@cache:6380/3", password: "ignored", db: 1, wantAddr: "cache:6380", wantPassword: "secret", wantDB: 3},
		{name: "url falls back to settings", addr: "redis://cache:6380", password: "pw", db: 4, wantAddr: "cache:6380", wantPassword: "pw", wantDB: 4},
		{name: "tls url", addr: "rediss://cache:6380/0", wantAddr: "cache:6380", wantTLS: true},
		{name: "bad db in url", addr: "redis://cache:6380/notanumber", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := clientOptions(tt.addr, tt.password, tt.db)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("clientOptions: %v", err)
			}
			if opts.Addr != tt.wantAddr || opts.Password != tt.wantPassword || opts.DB != tt.wantDB {
				t.Errorf("got addr=%q password=%q db=%d", opts.Addr, opts.Password, opts.DB)
			}
			if (opts.TLSConfig != nil) != tt.wantTLS {
				t.Errorf("expected TLS=%v", tt.wantTLS)
			}
			if opts.PoolSize != 10 {
				t.Errorf("expected pool size 10, got %d", opts.PoolSize)
			}
		})
	}
}
