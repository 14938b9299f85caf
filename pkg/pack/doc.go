// Package pack builds UI package containers from an authoring description.
//
// Sources are usually written in YAML:
//
//	id: main0001
//	name: Main
//	items:
//	  - id: win
//	    name: Window
//	    children:
//	      - {type: image, src: icon, name: bg}
//	      - type: list
//	        name: rows
//	        list:
//	          default_item: ui://Main/Row
//	          items: [{title: first}, {title: second}]
//
// Encode validates the source and produces bytes accepted by asset.Decode.
package pack
