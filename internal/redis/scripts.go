package redis

import (
	"embed"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lockreap/lockreapd/internal/core"
)

//go:embed lua/*.lua
var luaFS embed.FS

var scripts = map[string]*goredis.Script{
	core.ScriptReapOrphans: mustLoadScript("reap_orphans"),
}

func mustLoadScript(name string) *goredis.Script {
	src, err := luaFS.ReadFile("lua/" + name + ".lua")
	if err != nil {
		panic(fmt.Sprintf("embedded script %s: %v", name, err))
	}
	return goredis.NewScript(string(src))
}
