package docs

import (
	"os"
	"path/filepath"
	"testing"
)

// bindBufferPage is a trimmed DocBook 5 reference page in the shape the
// upstream man pages use.
const bindBufferPage = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE book PUBLIC "-//OASIS//DTD DocBook MathML Module V1.1b1//EN"
              "http://www.oasis-open.org/docbook/xml/mathml/1.1CR1/dbmathml.dtd">
<refentry xmlns="http://docbook.org/ns/docbook" xmlns:xlink="http://www.w3.org/1999/xlink" version="5.0" xml:id="glBindBuffer">
    <info><copyright><year>2005</year><holder>Sams Publishing &copy;</holder></copyright></info>
    <refmeta><refentrytitle>glBindBuffer</refentrytitle></refmeta>
    <refnamediv>
        <refname>glBindBuffer</refname>
        <refpurpose>bind a named
            buffer object</refpurpose>
    </refnamediv>
    <refsect1 xml:id="parameters"><title>Parameters</title>
        <variablelist>
        <varlistentry>
            <term><parameter>target</parameter></term>
            <listitem>
                <para>Specifies the target to which the buffer object is bound,
                which must be <constant>GL_ARRAY_BUFFER</constant>.</para>
            </listitem>
        </varlistentry>
        <varlistentry>
            <term><parameter>buffer</parameter></term>
            <listitem><para>Specifies the name of a buffer object.
            See <link xlink:href="glGenBuffers">glGenBuffers</link>.</para></listitem>
        </varlistentry>
        </variablelist>
    </refsect1>
    <refsect1 xml:id="description"><title>Description</title>
        <para>Values range over <mml:math><mml:mn>0</mml:mn></mml:math><!-- eqn: 0 :--> to &infin;.</para>
    </refsect1>
</refentry>
`

func page(name, purpose string, params ...[2]string) string {
	body := `<refentry><refnamediv><refname>` + name + `</refname><refpurpose>` + purpose + `</refpurpose></refnamediv>`
	if len(params) > 0 {
		body += `<refsect1 id="parameters"><variablelist>`
		for _, p := range params {
			body += `<varlistentry><term><parameter>` + p[0] + `</parameter></term><listitem><para>` + p[1] + `</para></listitem></varlistentry>`
		}
		body += `</variablelist></refsect1>`
	}
	return body + `</refentry>`
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
