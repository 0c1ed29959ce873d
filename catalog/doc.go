// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog loads the survey document: app settings and the ordered
question list.

# Document

	app_config:
	  title: 教学效率调研小助手
	  icon: 📚
	  password: "123456789"   # or a bcrypt hash
	questions:
	  - id: role_focus
	    text: 您目前在高校的主要工作重心是？
	    type: single            # or multi
	    options: [教学任务为主, 科研任务为主]

# Fallback

Load never fails. A missing or unparseable file yields Default(). A
parseable document keeps its app_config values; missing fields and an
absent or invalid questions section fall back to the built-in values
individually. Validate reports why a question list was rejected.
*/
package catalog
