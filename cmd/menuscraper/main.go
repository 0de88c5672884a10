package main

import (
	"uscmenu-backend/cmd/menuscraper/commands"
	"uscmenu-backend/lib/serviceutil"
	"uscmenu-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	commands.ExecuteContext(serviceutil.SignalContext())
}
