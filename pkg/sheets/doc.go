// Package sheets reads tabular rule sources.
//
// A rule source is a workbook with one sheet per table: "main" lists the
// directories to scan, "migrate_rule" and "zip_rule" hold the rules. Each
// sheet is returned as rows of string cells, header row included.
//
// Two formats are supported, chosen by file extension: Excel workbooks
// (.xlsx, .xlsm) and YAML documents (.yaml, .yml) mapping sheet names to
// lists of rows:
//
//	main:
//	  - [path]
//	  - [/home/me/Downloads]
//	migrate_rule:
//	  - [name, content_types, extensions, pattern, target_path]
//	  - [invoices, "", .pdf, invoice, Invoices]
package sheets
