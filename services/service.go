package services

import "caretrack/config"

// Cfg is injected from main before the router starts serving.
var Cfg *config.Config
