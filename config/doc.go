// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package config loads the YAML configuration shared by the xhr and
xhrsync commands, and turns it into a logger and a set of xhr options.

A configuration file looks like this:

	headers:
	  user-agent: my-agent/1.0
	disableHeaderCheck: false
	tls:
	  ca: /etc/ssl/my-ca.pem
	  rejectUnauthorized: true
	helper:
	  path: /usr/local/bin/xhrsync
	  logFile: /var/log/xhrsync.log
	log:
	  level: debug
	  format: console
	  file: /var/log/xhr.log
	  maxSize: 10
	  maxBackups: 3

Every field is optional.
*/
package config
