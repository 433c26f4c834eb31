// Package template renders per-site configuration files and control
// scripts from embedded templates.
//
// Templates are organized by driver and embedded in the binary with
// go:embed directives:
//
//	apache2/conf.tmpl    apache2/start.tmpl    apache2/stop.tmpl
//	mysql/conf.tmpl      mysql/start.tmpl      mysql/stop.tmpl
//	mysql/create.tmpl
//	pgsql/conf.tmpl      pgsql/pg_hba.conf.tmpl pgsql/pg_ident.conf.tmpl
//	pgsql/start.tmpl     pgsql/stop.tmpl
//
// A template is resolved once per site against a Context, a plain
// name-to-string mapping. Rendering is pure substitution: the same
// template and context always produce byte-identical output, and a
// placeholder without a binding is an error, never silently dropped.
// This guarantees a provisioning failure surfaces before any daemon is
// started.
//
//	text, err := template.Render("mysql", "conf", template.Context{
//	    "PORT":    "10002",
//	    "DATADIR": "/home/dev/www/site-alpha-10000/db/data",
//	    ...
//	})
//
// Callers write the returned text to disk themselves, or use
// RenderFiles with FileSpec entries to emit a whole artifact set with
// explicit file modes.
package template
