package emitters

import (
	"strconv"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils"
	"github.com/jcaballol94/com.jcaballol94.ide.sublime/utils/pathutils"
)

// Fixed values written to every project file.
const (
	toolsVersion           = "4.0"
	productVersion         = "10.0.20506"
	baseDirectory          = "."
	targetFrameworkVersion = "v4.7.1"

	// MSBuildNamespaceURI is the XML namespace of project files.
	MSBuildNamespaceURI = "http://schemas.microsoft.com/developer/msbuild/2003"
)

// projectFooter closes the last item group and the project.
var projectFooter = strings.Join([]string{
	"  </ItemGroup>",
	`  <Import Project="$(MSBuildToolsPath)\Microsoft.CSharp.targets" />`,
	"  <!-- To modify your build process, add your task inside one of the targets below and uncomment it.",
	"       Other similar extension points exist, see Microsoft.Common.targets.",
	`  <Target Name="BeforeBuild">`,
	"  </Target>",
	`  <Target Name="AfterBuild">`,
	"  </Target>",
	"  -->",
	"</Project>",
	"",
}, WindowsNewline)

// ProjectReference is a reference to another generated project.
type ProjectReference struct {
	// Name is the referenced assembly name.
	Name string
	// GUID is the referenced project identifier.
	GUID string
}

// ProjectFile holds every resolved value rendered into a project file.
type ProjectFile struct {
	AssemblyName  string
	GUID          string
	RootNamespace string
	LangVersion   string
	Defines       []string
	AllowUnsafe   bool

	// Analyzers and Rulesets are absolute paths. Their blocks are omitted when empty.
	Analyzers []string
	Rulesets  []string

	// CompileItems are escaped paths of the source files.
	CompileItems []string

	// AssetItems is the pre-rendered block of non-source items, see GenerateAssetProjectParts.
	AssetItems string

	// References are absolute paths of binary references.
	References []string

	// HasAssemblyReferences opens a separate item group for project references, even if ProjectReferences is empty.
	HasAssemblyReferences bool
	ProjectReferences     []ProjectReference
}

// RenderProjectFile renders a project file.
func RenderProjectFile(p *ProjectFile) string {
	var b strings.Builder
	writeProjectHeader(&b, p)

	for _, item := range p.CompileItems {
		b.WriteString(`     <Compile Include="` + item + `" />` + WindowsNewline)
	}
	b.WriteString(p.AssetItems)

	for _, reference := range p.References {
		writeReference(&b, reference)
	}

	if p.HasAssemblyReferences {
		b.WriteString("  </ItemGroup>" + WindowsNewline)
		b.WriteString("  <ItemGroup>" + WindowsNewline)
		for _, reference := range p.ProjectReferences {
			b.WriteString(`    <ProjectReference Include="` + reference.Name + ProjectFileExtension + `">` + WindowsNewline)
			b.WriteString("      <Project>{" + reference.GUID + "}</Project>" + WindowsNewline)
			b.WriteString("      <Name>" + reference.Name + "</Name>" + WindowsNewline)
			b.WriteString("    </ProjectReference>" + WindowsNewline)
		}
	}

	b.WriteString(projectFooter)
	return b.String()
}

// writeReference writes a binary reference named after its file.
func writeReference(b *strings.Builder, fullReference string) {
	escapedFullPath := pathutils.NormalizePath(pathutils.EscapeXML(fullReference))
	b.WriteString(`    <Reference Include="` + utils.GetFileNameWithoutExtension(escapedFullPath) + `">` + WindowsNewline)
	b.WriteString("        <HintPath>" + escapedFullPath + "</HintPath>" + WindowsNewline)
	b.WriteString("    </Reference>" + WindowsNewline)
}

// writeProjectHeader writes everything up to and including the opening of the item group of compile items.
func writeProjectHeader(b *strings.Builder, p *ProjectFile) {
	lines := []string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`<Project ToolsVersion="` + toolsVersion + `" DefaultTargets="Build" xmlns="` + MSBuildNamespaceURI + `">`,
		`  <PropertyGroup>`,
		`    <LangVersion>` + p.LangVersion + `</LangVersion>`,
		`  </PropertyGroup>`,
		`  <PropertyGroup>`,
		`    <Configuration Condition=" '$(Configuration)' == '' ">Debug</Configuration>`,
		`    <Platform Condition=" '$(Platform)' == '' ">AnyCPU</Platform>`,
		`    <ProductVersion>` + productVersion + `</ProductVersion>`,
		`    <SchemaVersion>2.0</SchemaVersion>`,
		`    <RootNamespace>` + p.RootNamespace + `</RootNamespace>`,
		`    <ProjectGuid>{` + p.GUID + `}</ProjectGuid>`,
		`    <OutputType>Library</OutputType>`,
		`    <AppDesignerFolder>Properties</AppDesignerFolder>`,
		`    <AssemblyName>` + p.AssemblyName + `</AssemblyName>`,
		`    <TargetFrameworkVersion>` + targetFrameworkVersion + `</TargetFrameworkVersion>`,
		`    <FileAlignment>512</FileAlignment>`,
		`    <BaseDirectory>` + baseDirectory + `</BaseDirectory>`,
		`  </PropertyGroup>`,
		`  <PropertyGroup Condition=" '$(Configuration)|$(Platform)' == 'Debug|AnyCPU' ">`,
		`    <DebugSymbols>true</DebugSymbols>`,
		`    <DebugType>full</DebugType>`,
		`    <Optimize>false</Optimize>`,
		`    <OutputPath>Temp\bin\Debug\</OutputPath>`,
		`    <DefineConstants>` + strings.Join(p.Defines, ";") + `</DefineConstants>`,
		`    <ErrorReport>prompt</ErrorReport>`,
		`    <WarningLevel>4</WarningLevel>`,
		`    <NoWarn>0169</NoWarn>`,
		`    <AllowUnsafeBlocks>` + formatBool(p.AllowUnsafe) + `</AllowUnsafeBlocks>`,
		`  </PropertyGroup>`,
		`  <PropertyGroup>`,
		`    <NoConfig>true</NoConfig>`,
		`    <NoStdLib>true</NoStdLib>`,
		`    <AddAdditionalExplicitAssemblyReferences>false</AddAdditionalExplicitAssemblyReferences>`,
		`    <ImplicitlyExpandNETStandardFacades>false</ImplicitlyExpandNETStandardFacades>`,
		`    <ImplicitlyExpandDesignTimeFacades>false</ImplicitlyExpandDesignTimeFacades>`,
	}
	for _, ruleset := range p.Rulesets {
		lines = append(lines, `    <CodeAnalysisRuleSet>`+ruleset+`</CodeAnalysisRuleSet>`)
	}
	lines = append(lines, `  </PropertyGroup>`)

	if len(p.Analyzers) > 0 {
		lines = append(lines, `  <ItemGroup>`)
		for _, analyzer := range p.Analyzers {
			lines = append(lines, `    <Analyzer Include="`+pathutils.NormalizePath(analyzer)+`" />`)
		}
		lines = append(lines, `  </ItemGroup>`)
	}
	lines = append(lines, `  <ItemGroup>`)

	for _, line := range lines {
		b.WriteString(line)
		b.WriteString(WindowsNewline)
	}
}

// formatBool formats a boolean with a leading capital, as project files expect.
func formatBool(v bool) string {
	s := strconv.FormatBool(v)
	return strings.ToUpper(s[:1]) + s[1:]
}
